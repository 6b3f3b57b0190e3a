package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/automaxprocs/maxprocs"

	"cover-merge/internal/applications"
	"cover-merge/internal/pdfdoc"
	"cover-merge/internal/render"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	logf := func(format string, a ...any) {
		if flags.verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}

	coverText, err := readCoverText(flags, stdin)
	if err != nil {
		return err
	}
	resume, err := os.ReadFile(flags.resume)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	logf("Read %s (%d bytes)", flags.resume, len(resume))

	svc := applications.NewService(render.New(), pdfdoc.NewMerger(), render.DefaultTitle)
	res, err := svc.Assemble(ctx, applications.Submission{
		ApplicantName:  flags.name,
		CoverText:      coverText,
		Title:          flags.title,
		ResumeFileName: filepath.Base(flags.resume),
		Resume:         resume,
	})
	if err != nil {
		return err
	}

	path, err := outputPath(flags.out, res.FileName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stdout, "Created %s (%d pages)\n", path, res.Pages)
	return nil
}

func readCoverText(flags cliFlags, stdin io.Reader) (string, error) {
	switch flags.coverFile {
	case "":
		return flags.coverText, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read cover text from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(flags.coverFile)
		if err != nil {
			return "", fmt.Errorf("read cover text: %w", err)
		}
		return string(data), nil
	}
}

// outputPath resolves --out: empty means the working directory, an existing
// directory gets the derived file name, anything else is used as is.
func outputPath(out, derived string) (string, error) {
	if out == "" {
		return derived, nil
	}
	info, err := os.Stat(out)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(out, derived), nil
	case err == nil || os.IsNotExist(err):
		return out, nil
	default:
		return "", fmt.Errorf("stat output: %w", err)
	}
}
