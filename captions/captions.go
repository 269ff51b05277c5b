package captions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"presetbird/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// files lists the files of dir ending in ext, sorted by name.
func files(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("bad extension %q: %w", ext, err)
	}

	out := matches[:0]
	for _, path := range matches {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			out = append(out, path)
		}
	}
	return out, nil
}

func captionPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + CaptionExtension
}

// Rename numbers the files of dir ending in ext in name order: prefix, then
// the index padded to as many digits as numbering has '#'. Captions of
// renamed files follow them when withCaptions is set.
func Rename(dir, ext, numbering, prefix string, withCaptions bool) (Result, error) {
	log := logger.Service("captions")
	paths, err := files(dir, ext)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		res := Result{Log: fmt.Sprintf("No %s files found in directory %s.", ext, dir)}
		log.Info(res.Log)
		return res, nil
	}

	digits := strings.Count(numbering, "#")
	captions := withCaptions && ext != CaptionExtension

	type move struct{ from, tmp, to string }
	var moves []move
	for i, path := range paths {
		to := filepath.Join(dir, fmt.Sprintf("%s%0*d%s", prefix, digits, i+1, ext))
		moves = append(moves, move{from: path, to: to})
		if !captions {
			continue
		}
		if _, err := os.Stat(captionPath(path)); err == nil {
			moves = append(moves, move{from: captionPath(path), to: captionPath(to)})
		}
	}

	// Every file goes through a temporary name first so a new name never
	// lands on a file that is still waiting to be renamed.
	batch := uuid.NewString()
	for i := range moves {
		moves[i].tmp = filepath.Join(dir, fmt.Sprintf(".%s-%d", batch, i))
		if err := os.Rename(moves[i].from, moves[i].tmp); err != nil {
			return Result{}, fmt.Errorf("failed to rename %s: %w", moves[i].from, err)
		}
	}
	for _, m := range moves {
		if err := os.Rename(m.tmp, m.to); err != nil {
			return Result{}, fmt.Errorf("failed to rename %s to %s: %w", m.from, m.to, err)
		}
	}

	res := Result{Count: len(paths), Log: fmt.Sprintf("%d files updated.", len(paths))}
	log.Info(res.Log, "dir", dir, "ext", ext)
	return res, nil
}

// Delete removes the files of dir ending in ext whose name starts with
// prefix. An empty prefix matches every file.
func Delete(dir, ext, prefix string) (Result, error) {
	log := logger.Service("captions")
	paths, err := files(dir, ext)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, path := range paths {
		if !strings.HasPrefix(filepath.Base(path), prefix) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return res, fmt.Errorf("failed to delete %s: %w", path, err)
		}
		res.Count++
	}

	res.Log = fmt.Sprintf("%d files deleted from %s.", res.Count, dir)
	log.Info(res.Log, "ext", ext, "prefix", prefix)
	return res, nil
}

func editor(op Operation, target, newText string) (func(string) string, error) {
	switch op {
	case Insert:
		return func(s string) string { return newText + s }, nil
	case Append:
		return func(s string) string { return s + newText }, nil
	case Replace:
		if target == "" {
			return nil, fmt.Errorf("%w for %s operation", ErrTargetRequired, op.Title())
		}
		re, err := regexp.Compile(target)
		if err != nil {
			return nil, fmt.Errorf("bad target expression %q: %w", target, err)
		}
		return func(s string) string { return re.ReplaceAllString(s, newText) }, nil
	case Remove:
		if target == "" {
			return nil, fmt.Errorf("%w for %s operation", ErrTargetRequired, op.Title())
		}
		return func(s string) string { return strings.ReplaceAll(s, target, "") }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
}

// Edit applies op to every file of dir ending in ext. Replace takes target
// as a regular expression, Remove takes it literally. Only files whose
// content changed are written and counted.
func Edit(dir string, op Operation, ext, target, newText string) (Result, error) {
	log := logger.Service("captions")
	paths, err := files(dir, ext)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		return Result{Log: fmt.Sprintf("No %s files found in %s.", ext, dir)}, nil
	}

	edit, err := editor(op, target, newText)
	if err != nil {
		return Result{}, err
	}

	log.Debug("Editing files", "count", len(paths), "ext", ext, "operation", op)

	var res Result
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("failed to read %s: %w", path, err)
		}
		content := edit(string(data))
		if content == string(data) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", path, err)
		}
		res.Count++
	}

	res.Log = fmt.Sprintf("%s operation completed successfully for %d files in %s.", op.Title(), res.Count, dir)
	log.Info(res.Log)
	return res, nil
}

// isImage tells images from other files by their content.
func isImage(path string) bool {
	log := logger.Service("captions")
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		log.Warn("Could not detect file type", "file", path, "error", err)
		return false
	}
	return strings.HasPrefix(mtype.String(), "image/")
}

// Sync gives every image in dir a caption file holding caption, keeping
// captions that already exist, and deletes captions no image belongs to.
func Sync(dir, caption string) (SyncResult, error) {
	log := logger.Service("captions")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	images := make(map[string]bool)
	captions := make(map[string]bool)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch {
		case filepath.Ext(path) == CaptionExtension:
			captions[path] = true
		case isImage(path):
			images[captionPath(path)] = true
		}
	}

	var res SyncResult
	for path := range images {
		if captions[path] {
			continue
		}
		if err := os.WriteFile(path, []byte(caption), 0o644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", path, err)
		}
		res.Created++
	}
	for path := range captions {
		if images[path] {
			continue
		}
		if err := os.Remove(path); err != nil {
			return res, fmt.Errorf("failed to delete %s: %w", path, err)
		}
		res.Deleted++
	}

	res.Log = fmt.Sprintf("Created %d and deleted %d captions for files in %s.", res.Created, res.Deleted, dir)
	log.Info(res.Log)
	return res, nil
}

// Summary joins the files of dir ending in ext, each under a
// "=== FILE: name ===" line when separate is set. With saveAs it writes the
// summary to that file in dir and returns a log line instead of the text.
// The summary file itself is never part of a summary.
func Summary(dir, ext string, separate bool, saveAs string) (string, error) {
	log := logger.Service("captions")
	paths, err := files(dir, ext)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, path := range paths {
		if saveAs != "" && filepath.Base(path) == saveAs {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		if separate {
			parts = append(parts, fmt.Sprintf("=== FILE: %s ===\n%s", filepath.Base(path), data))
			continue
		}
		parts = append(parts, string(data))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No %s files found in %s.", ext, dir), nil
	}

	summary := strings.Join(parts, "\n")
	if saveAs == "" {
		log.Info(fmt.Sprintf("Summarized %d files in %s.", len(parts), dir))
		return summary, nil
	}

	path := filepath.Join(dir, saveAs)
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	msg := fmt.Sprintf("Summarized %d files in %s and saved in %s.", len(parts), dir, path)
	log.Info(msg)
	return msg, nil
}
