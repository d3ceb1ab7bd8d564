package render

import (
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/dungeon-engine/engine/log"
)

// SpriteManager holds sprite images loaded from assets/sprites. Scaled
// copies are cached per size.
type SpriteManager struct {
	dir    string
	log    log.Log
	source map[string]image.Image
	scaled map[spriteKey]*ebiten.Image
}

type spriteKey struct {
	name string
	w, h int
}

// NewSpriteManager loads every PNG under the assets sprite directory
func NewSpriteManager(l log.Log) *SpriteManager {
	sm := &SpriteManager{
		dir:    filepath.Join(getAssetsDir(), "sprites"),
		log:    log.OrNop(l),
		source: make(map[string]image.Image),
		scaled: make(map[spriteKey]*ebiten.Image),
	}

	matches, _ := filepath.Glob(filepath.Join(sm.dir, "*.png"))
	for _, path := range matches {
		name := filepath.Base(path)
		name = name[:len(name)-len(filepath.Ext(name))]
		if img := sm.loadFromFile(path); img != nil {
			sm.source[name] = img
		}
	}
	sm.log.Info("sprites loaded", log.String("dir", sm.dir), log.Int("count", len(sm.source)))
	return sm
}

// Get returns the named sprite scaled to w x h, or nil when not loaded
func (sm *SpriteManager) Get(name string, w, h int) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	key := spriteKey{name, w, h}
	if img, ok := sm.scaled[key]; ok {
		return img
	}
	src, ok := sm.source[name]
	if !ok {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	img := ebiten.NewImageFromImage(dst)
	sm.scaled[key] = img
	return img
}

func getAssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

func (sm *SpriteManager) loadFromFile(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		sm.log.Warn("could not decode sprite", log.String("path", path), log.Error(err))
		return nil
	}
	return img
}
