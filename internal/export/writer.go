// Package export renders the plain-text reports and receipts. The layout is
// fixed: 80-char rule header with the shop name and generation timestamp,
// tab-separated columns, and a trailing summary block. Receipts use a
// narrower 50-char rule with itemized lines.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	wideRule   = 80
	narrowRule = 50
	separator  = "\t"
)

// Renderer builds report text and writes the files under Dir.
type Renderer struct {
	ShopName string
	Dir      string
}

func NewRenderer(shopName, dir string) *Renderer {
	return &Renderer{ShopName: shopName, Dir: dir}
}

func rule(n int) string { return strings.Repeat("=", n) }

func (r *Renderer) header(b *strings.Builder, title string, now time.Time) {
	b.WriteString(rule(wideRule) + "\n")
	fmt.Fprintf(b, "%s - %s\n", r.ShopName, title)
	fmt.Fprintf(b, "Generated: %s\n", now.Format("02/01/2006 15:04:05"))
	b.WriteString(rule(wideRule) + "\n\n")
}

func columns(b *strings.Builder, cols ...string) {
	b.WriteString(strings.Join(cols, separator) + "\n")
	b.WriteString(strings.Repeat("-", wideRule) + "\n")
}

func summary(b *strings.Builder, lines ...string) {
	b.WriteString("\n" + rule(wideRule) + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}

// WriteFile persists content under the export directory, creating it when
// missing, and returns the full path.
func (r *Renderer) WriteFile(name, content string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// TimestampName builds "<prefix>_<yyyymmdd_hhmmss>.txt".
func TimestampName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.txt", prefix, now.Format("20060102_150405"))
}
