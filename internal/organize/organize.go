// Package organize names processed books and files them into the
// destination directory.
package organize

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"bookjan/internal/fileutil"
	"bookjan/internal/ndl"
)

// forbiddenReplacement substitutes for characters that are unsafe in
// filenames on common filesystems.
const forbiddenReplacement = "⦸"

var forbiddenChars = []string{"/", ":", "*", "?", `"`, "<", ">", "|", `\`}

// Organizer files processed books under a destination directory. In move
// mode the source file is renamed away instead of copied.
type Organizer struct {
	destDir string
	move    bool
}

// NewOrganizer creates an Organizer writing into destDir.
func NewOrganizer(destDir string, move bool) *Organizer {
	return &Organizer{destDir: destDir, move: move}
}

// Filename derives the destination filename for a catalog record:
// "{title}_{isbn}.pdf", with the volume number inserted when the record
// carries one. Records without a title or ISBN are an error; guessing a
// name would make the shelf unsearchable.
func Filename(record ndl.Record) (string, error) {
	title := record.Title()
	if title == "" {
		return "", fmt.Errorf("record has no title, cannot derive filename")
	}
	isbn := record.ISBN()
	if isbn == "" {
		return "", fmt.Errorf("record has no isbn, cannot derive filename")
	}

	name := title
	if vol := volumeToken(record["description"]); vol != "" {
		name = fmt.Sprintf("%s_%s巻", title, vol)
	}
	name = fmt.Sprintf("%s_%s.pdf", name, isbn)

	return Sanitize(name), nil
}

// Sanitize replaces filesystem-hostile characters in a filename. The
// replacement is deterministic so the same record always maps to the
// same name.
func Sanitize(name string) string {
	for _, c := range forbiddenChars {
		name = strings.ReplaceAll(name, c, forbiddenReplacement)
	}
	return name
}

// volumeToken extracts a leading run of digits from the catalog
// description field. NDL comic records typically carry the volume
// number there ("12 大場つぐみ 原作 ...").
func volumeToken(description string) string {
	var b strings.Builder
	for _, r := range description {
		if !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Organize files src under the destination directory using the name
// derived from record. It returns the destination path.
func (o *Organizer) Organize(src string, record ndl.Record) (string, error) {
	name, err := Filename(record)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(o.destDir, name)
	slog.Debug("Filing book", "source", src, "destination", dst, "move", o.move)

	if o.move {
		err = fileutil.MoveFile(src, dst)
	} else {
		err = fileutil.CopyFile(src, dst)
	}
	if err != nil {
		return "", err
	}
	return dst, nil
}
