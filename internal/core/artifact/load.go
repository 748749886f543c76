package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"textclf/internal/core/classifier"
	"textclf/internal/core/vectorizer"
	perr "textclf/internal/platform/errors"
)

// Load reads both artifacts concurrently and checks that they fit together
// Every failure is an ErrorCodeStartup error naming the offending file
func Load(ctx context.Context, p Paths) (*Bundle, error) {
	var b Bundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, info, err := LoadVectorizer(gctx, p.Vectorizer)
		if err != nil {
			return err
		}
		b.Vectorizer, b.VectorizerInfo = v, info
		return nil
	})
	g.Go(func() error {
		c, info, err := LoadClassifier(gctx, p.Classifier)
		if err != nil {
			return err
		}
		b.Classifier, b.ClassifierInfo = c, info
		return nil
	})
	if err := g.Wait(); err != nil {
		_ = b.Close()
		return nil, err
	}

	vd, cd := b.Vectorizer.Dim(), b.Classifier.Dim()
	if cd != 0 && vd != cd {
		_ = b.Close()
		return nil, perr.Startupf("artifact: vectorizer %s produces %d features but classifier %s expects %d",
			p.Vectorizer, vd, p.Classifier, cd)
	}
	return &b, nil
}

// LoadVectorizer reads and decodes a vectorizer artifact
func LoadVectorizer(ctx context.Context, path string) (vectorizer.Vectorizer, Info, error) {
	h, info, err := read(ctx, path, FormatVectorizer)
	if err != nil {
		return nil, Info{}, err
	}
	dec, ok := vectorizerDecoder(h.Kind)
	if !ok {
		return nil, Info{}, perr.Startupf("artifact: %s: unknown vectorizer kind %q (known: %s)",
			path, h.Kind, strings.Join(VectorizerKinds(), ", "))
	}
	v, err := dec(DecodeContext{Path: path, Dir: filepath.Dir(path)}, h.Spec)
	if err != nil {
		return nil, Info{}, perr.Wrapf(err, perr.ErrorCodeStartup, "artifact: decode %s", path)
	}
	info.Dim = v.Dim()
	return v, info, nil
}

// LoadClassifier reads and decodes a classifier artifact
func LoadClassifier(ctx context.Context, path string) (classifier.Classifier, Info, error) {
	h, info, err := read(ctx, path, FormatClassifier)
	if err != nil {
		return nil, Info{}, err
	}
	dec, ok := classifierDecoder(h.Kind)
	if !ok {
		return nil, Info{}, perr.Startupf("artifact: %s: unknown classifier kind %q (known: %s)",
			path, h.Kind, strings.Join(ClassifierKinds(), ", "))
	}
	c, err := dec(DecodeContext{Path: path, Dir: filepath.Dir(path)}, h.Spec)
	if err != nil {
		return nil, Info{}, perr.Wrapf(err, perr.ErrorCodeStartup, "artifact: decode %s", path)
	}
	info.Dim = c.Dim()
	return c, info, nil
}

// read loads the file and validates the header against the expected format
func read(ctx context.Context, path, format string) (header, Info, error) {
	if err := ctx.Err(); err != nil {
		return header{}, Info{}, perr.Wrapf(err, perr.ErrorCodeStartup, "artifact: %s", path)
	}
	if path == "" {
		return header{}, Info{}, perr.Startupf("artifact: empty %s path", format)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return header{}, Info{}, perr.Wrapf(err, perr.ErrorCodeStartup, "artifact: read %s", path)
	}

	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return header{}, Info{}, perr.Wrapf(err, perr.ErrorCodeStartup, "artifact: parse %s", path)
	}
	switch {
	case h.Format != format:
		return header{}, Info{}, perr.Startupf("artifact: %s has format %q, want %q", path, h.Format, format)
	case h.Version <= 0:
		return header{}, Info{}, perr.Startupf("artifact: %s has no version", path)
	case h.Version > Version:
		return header{}, Info{}, perr.Startupf("artifact: %s version %d is newer than supported %d", path, h.Version, Version)
	case h.Kind == "":
		return header{}, Info{}, perr.Startupf("artifact: %s has no kind", path)
	case len(h.Spec) == 0 || string(h.Spec) == "null":
		return header{}, Info{}, perr.Startupf("artifact: %s has no spec", path)
	}

	sum := sha256.Sum256(raw)
	info := Info{
		Path:    path,
		Format:  h.Format,
		Version: h.Version,
		Kind:    h.Kind,
		SHA256:  hex.EncodeToString(sum[:]),
		Size:    int64(len(raw)),
		Meta:    h.Meta,
	}
	return h, info, nil
}

// Describe renders a one-line summary for startup logs
func (i Info) Describe() string {
	return fmt.Sprintf("%s %s v%d dim=%d sha256=%.12s", i.Kind, i.Path, i.Version, i.Dim, i.SHA256)
}
