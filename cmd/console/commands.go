package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pradeshm/infinispan-console/internal/console"
	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/rest"
	"github.com/pradeshm/infinispan-console/internal/util"
)

// command runs one subcommand with its positional arguments.
type command struct {
	usage string
	nargs int
	run   func(ctx context.Context, app *application, flags cliFlags, args []string, out io.Writer) error
}

var commands = map[string]command{
	"info":     {usage: "info", nargs: 0, run: runInfo},
	"caches":   {usage: "caches [cache-manager]", nargs: -1, run: runCaches},
	"get":      {usage: "get <cache> <key>", nargs: 2, run: runGet},
	"put":      {usage: "put <cache> <key> <value>", nargs: 3, run: runPut},
	"delete":   {usage: "delete <cache> <key>", nargs: 2, run: runDelete},
	"clear":    {usage: "clear <cache>", nargs: 1, run: runClear},
	"config":   {usage: "config <cache>", nargs: 1, run: runConfig},
	"encoding": {usage: "encoding <cache>", nargs: 1, run: runEncoding},
	"create":   {usage: "create <cache> <config-file>", nargs: 2, run: runCreate},
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// runCommand looks up and runs the named command.
func runCommand(ctx context.Context, app *application, flags cliFlags, args []string, out io.Writer) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, expected one of: %s", args[0], commandNames())
	}

	cmdArgs := args[1:]
	if cmd.nargs >= 0 && len(cmdArgs) != cmd.nargs {
		return fmt.Errorf("usage: console %s", cmd.usage)
	}
	return cmd.run(ctx, app, flags, cmdArgs, out)
}

func runInfo(ctx context.Context, app *application, _ cliFlags, _ []string, out io.Writer) error {
	cm, err := app.containers.GetDefaultCacheManager(ctx)
	if err != nil {
		return app.readFailure(err, "Unable to read the default cache manager", out)
	}
	return writeJSON(out, cm)
}

func runCaches(ctx context.Context, app *application, _ cliFlags, args []string, out io.Writer) error {
	cacheManager := console.DefaultCacheManager
	switch len(args) {
	case 0:
	case 1:
		cacheManager = args[0]
	default:
		return errors.New("usage: console caches [cache-manager]")
	}

	caches, err := app.containers.GetCaches(ctx, cacheManager)
	if err != nil {
		return app.readFailure(err, "Unable to list caches", out)
	}
	return writeJSON(out, caches)
}

func runGet(ctx context.Context, app *application, flags cliFlags, args []string, out io.Writer) error {
	keyType, err := parseContentType("key", flags.keyContentType)
	if err != nil {
		return err
	}

	entry, err := app.caches.GetEntry(ctx, args[0], args[1], keyType)
	if errors.Is(err, util.ErrNotFound) {
		return writeResult(out, rest.ActionResponse{
			Message: fmt.Sprintf("Entry with key %s not found.", args[1]),
		})
	}
	if err != nil {
		return app.readFailure(err, "Unable to read the entry", out)
	}
	return writeJSON(out, entry)
}

func runPut(ctx context.Context, app *application, flags cliFlags, args []string, out io.Writer) error {
	keyType, err := parseContentType("key", flags.keyContentType)
	if err != nil {
		return err
	}
	valueType, err := parseContentType("value", flags.valueContentType)
	if err != nil {
		return err
	}
	cacheFlags, err := parseFlagList(flags.flags)
	if err != nil {
		return err
	}

	return writeResult(out, app.caches.AddEntry(ctx, console.EntryRequest{
		Cache:            args[0],
		Key:              args[1],
		KeyContentType:   keyType,
		Value:            args[2],
		ValueContentType: valueType,
		TimeToLive:       flags.ttl,
		MaxIdle:          flags.maxIdle,
		Flags:            cacheFlags,
		Update:           flags.update,
	}))
}

func runDelete(ctx context.Context, app *application, flags cliFlags, args []string, out io.Writer) error {
	keyType, err := parseContentType("key", flags.keyContentType)
	if err != nil {
		return err
	}
	return writeResult(out, app.caches.DeleteEntry(ctx, args[0], args[1], keyType))
}

func runClear(ctx context.Context, app *application, _ cliFlags, args []string, out io.Writer) error {
	return writeResult(out, app.caches.ClearCache(ctx, args[0]))
}

func runConfig(ctx context.Context, app *application, _ cliFlags, args []string, out io.Writer) error {
	cfg, err := app.caches.GetConfig(ctx, args[0])
	if err != nil {
		return app.readFailure(err, "Unable to read the cache configuration", out)
	}
	_, err = fmt.Fprintln(out, cfg)
	return err
}

func runEncoding(ctx context.Context, app *application, _ cliFlags, args []string, out io.Writer) error {
	enc, err := app.caches.Encoding(ctx, args[0])
	if err != nil {
		return app.readFailure(err, "Unable to read the cache encoding", out)
	}
	return writeJSON(out, enc)
}

func runCreate(ctx context.Context, app *application, _ cliFlags, args []string, out io.Writer) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read cache configuration: %w", err)
	}
	return writeResult(out, app.caches.CreateCache(ctx, args[0], string(data)))
}

// readFailure prints the normalized failure of a read and returns it as the
// command error.
func (a *application) readFailure(err error, fallback string, out io.Writer) error {
	return writeResult(out, a.normalizer.MapError(err, fallback))
}

// writeResult prints result and turns an unsuccessful one into an error.
func writeResult(out io.Writer, result rest.ActionResponse) error {
	if err := writeJSON(out, result); err != nil {
		return err
	}
	if !result.Success {
		return errors.New(result.Message)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseContentType accepts a content type tag or a protobuf scalar type name.
func parseContentType(side, value string) (encoding.ContentType, error) {
	if encoding.IsSchemaPrimitive(value) {
		return encoding.FromSchemaPrimitive(value), nil
	}
	ct := encoding.ContentType(value)
	if !ct.Valid() {
		return "", fmt.Errorf("invalid %s content type %q, expected one of: %v", side, value, encoding.AllContentTypes())
	}
	return ct, nil
}

func parseFlagList(values []string) ([]encoding.Flags, error) {
	flags := make([]encoding.Flags, 0, len(values))
	for _, v := range values {
		f := encoding.Flags(strings.ToUpper(strings.TrimSpace(v)))
		if !f.Valid() {
			return nil, fmt.Errorf("invalid cache flag %q", v)
		}
		flags = append(flags, f)
	}
	return flags, nil
}
