package app

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/holocron/internal/config"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/testutil"
)

func writePeople(t *testing.T) string {
	t.Helper()
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(testutil.People())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestApp(t *testing.T, out *bytes.Buffer, opts Options) *Application {
	t.Helper()
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	body := fmt.Sprintf(`
source:
  type: file
  file: %q
favorites:
  backend: memory
view:
  page_size: 2
  sort: name
`, writePeople(t))
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	manager, err := config.Load(cfgPath, nil)
	require.NoError(t, err)

	opts.Output = out
	opts.Plain = true
	a, err := New(context.Background(), manager, logger.NewNop(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Stop(context.Background()) })
	return a
}

func TestApplication_PlainRender(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{Filter: domain.FilterSpec{Gender: "female"}, Page: 1})

	require.NoError(t, a.Start(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Beru Whitesun lars")
	assert.Contains(t, s, "Leia Organa")
	assert.NotContains(t, s, "Mon Mothma")
	assert.Contains(t, s, "Showing 1-2 of 3 · pages: [1] 2")
}

func TestApplication_PlainPagePastEnd(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{Filter: domain.FilterSpec{Gender: "female"}, Page: 9})

	require.NoError(t, a.Start(context.Background()))
	assert.Contains(t, out.String(), "Mon Mothma")
	assert.Contains(t, out.String(), "Showing 3-3 of 3 · pages: 1 [2]")
}

func TestApplication_PlainHugePage(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{Filter: domain.FilterSpec{Gender: "female"}, Page: math.MaxInt / 10})

	require.NoError(t, a.Start(context.Background()))
	assert.Contains(t, out.String(), "Showing 3-3 of 3 · pages: 1 [2]")
}

func TestApplication_PlainMarksFavorites(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{Filter: domain.FilterSpec{Search: "yoda"}})

	yoda := testutil.People()[11]
	require.Equal(t, "Yoda", yoda.Name)
	require.NoError(t, a.favorites.Add(context.Background(), yoda))

	require.NoError(t, a.Start(context.Background()))
	assert.Contains(t, out.String(), "★")
}

func TestApplication_PlainFetchError(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{})
	require.NoError(t, os.Remove(a.getConfig().Source.File))

	err := a.Start(context.Background())
	require.Error(t, err)
	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Empty(t, out.String())
}

func TestApplication_ConfigChangePublishes(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads, unsubscribe := a.reloads.Subscribe(ctx)
	defer unsubscribe()

	old := a.getConfig()
	updated := *old
	updated.View.PageSize = 50
	a.onConfigChange(old, &updated)

	assert.Equal(t, 50, a.getConfig().View.PageSize)
	select {
	case got := <-reloads:
		assert.Equal(t, 50, got.View.PageSize)
	case <-time.After(time.Second):
		t.Fatal("expected a reload event")
	}
}

func TestConfigMapping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.MaxRetries = 7
	cfg.Favorites.Backend = "sqlite"
	cfg.Logging.Dir = "/tmp/holo"

	src := sourceConfig(cfg)
	assert.Equal(t, 7, src.MaxRetries)
	assert.Equal(t, cfg.Source.BaseURL, src.BaseURL)
	assert.Equal(t, cfg.Source.RetryBackoff, src.RetryBackoff)

	favs := favoritesConfig(cfg)
	assert.Equal(t, "sqlite", favs.Backend)
	assert.Equal(t, cfg.Favorites.Namespace, favs.Namespace)

	lcfg := LoggerConfig(cfg, false)
	assert.Equal(t, "/tmp/holo", lcfg.LogDir)
	assert.False(t, lcfg.TerminalOutput)
	assert.True(t, LoggerConfig(cfg, true).TerminalOutput)
}
