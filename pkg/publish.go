package arcrelease

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Publisher creates a hosted release for a pushed tag.
type Publisher interface {
	// Publish creates the release. Empty notes ask the host to generate them.
	Publish(ctx context.Context, tag, title, notes string) error
}

// GHPublisher publishes GitHub releases through the gh CLI.
type GHPublisher struct {
	Dir  string
	Path string // gh executable; "gh" when empty
	Log  zerolog.Logger
}

// Args returns the gh arguments for a release.
func (p *GHPublisher) Args(tag, title, notes string) []string {
	args := []string{"release", "create", tag, "--title", title}
	if strings.TrimSpace(notes) != "" {
		return append(args, "--notes", notes)
	}
	return append(args, "--generate-notes")
}

func (p *GHPublisher) Publish(ctx context.Context, tag, title, notes string) error {
	path := p.Path
	if path == "" {
		path = "gh"
	}
	args := p.Args(tag, title, notes)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = p.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.Log.Debug().Str("tag", tag).Bool("generated_notes", notes == "").Msg("gh release create")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gh release create failed: %w, detail: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// NopPublisher does nothing; it stands in when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, string) error { return nil }
