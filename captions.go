package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"presetbird/captions"
	"presetbird/extension"
)

// runCaptions runs one batch operation over a folder of training images and
// their caption files.
func runCaptions(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("captions: missing operation: %w", errUsage)
	}
	op, args := args[0], args[1:]

	fs := flag.NewFlagSet("captions "+op, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dir := fs.String("dir", "", "folder to work on")
	ext := fs.String("ext", captions.CaptionExtension, "extension of the files to work on")
	prefix := fs.String("prefix", "", "file name prefix")
	numbering := fs.String("numbering", "####", "rename: one # per digit")
	withCaptions := fs.Bool("captions", true, "rename: rename matching captions as well")
	operation := fs.String("op", "", "edit: insert, append, replace or remove")
	target := fs.String("target", "", "edit: text to replace (a regular expression) or remove")
	newText := fs.String("text", "", "edit: text to insert, append or replace with; sync: caption content")
	separate := fs.Bool("separator", true, "summary: put a header line before each file")
	save := fs.String("save", "", "summary: write the summary to this file in -dir")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("captions: -dir is required: %w", errUsage)
	}

	var lines []string
	switch op {
	case "rename":
		if !isFlagSet(fs, "ext") {
			*ext = ".jpg"
		}
		res, err := captions.Rename(*dir, *ext, *numbering, *prefix, *withCaptions)
		if err != nil {
			return err
		}
		lines = []string{res.Log}
	case "delete":
		res, err := captions.Delete(*dir, *ext, *prefix)
		if err != nil {
			return err
		}
		lines = []string{res.Log}
	case "edit":
		parsed, err := captions.ParseOperation(*operation)
		if err != nil {
			return err
		}
		res, err := captions.Edit(*dir, parsed, *ext, *target, *newText)
		if err != nil {
			return err
		}
		lines = []string{res.Log}
	case "sync":
		res, err := captions.Sync(*dir, *newText)
		if err != nil {
			return err
		}
		lines = []string{res.Log}
	case "summary":
		summary, err := captions.Summary(*dir, *ext, *separate, *save)
		if err != nil {
			return err
		}
		lines = strings.Split(summary, "\n")
	default:
		return fmt.Errorf("captions: unknown operation %q: %w", op, errUsage)
	}

	display, err := newDisplay(extension.DefaultRegistry(), out)
	if err != nil {
		return err
	}
	display("captions "+op, lines)
	return nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
