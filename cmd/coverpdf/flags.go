package main

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

type cliFlags struct {
	name      string
	title     string
	coverText string
	coverFile string
	resume    string
	out       string
	verbose   bool
}

var errUsage = errors.New("usage: coverpdf --resume resume.pdf (--cover-file letter.txt | --cover-text TEXT) [--name NAME] [--title TITLE] [--out PATH]")

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("coverpdf", flag.ContinueOnError)
	fs.StringVarP(&f.name, "name", "n", "", "applicant name, used for the output file name")
	fs.StringVarP(&f.title, "title", "t", "", "cover page title (default \"Cover Letter\")")
	fs.StringVar(&f.coverText, "cover-text", "", "cover letter text")
	fs.StringVarP(&f.coverFile, "cover-file", "c", "", "file holding the cover letter text, - for stdin")
	fs.StringVarP(&f.resume, "resume", "r", "", "resume PDF to append")
	fs.StringVarP(&f.out, "out", "o", "", "output file or directory (default current directory)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	if strings.TrimSpace(f.resume) == "" {
		return cliFlags{}, errUsage
	}
	if (f.coverText == "") == (f.coverFile == "") {
		return cliFlags{}, errUsage
	}
	return f, nil
}
