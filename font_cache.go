package quotecard

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontKey uniquely identifies a font face by family, size and weight.
type fontKey struct {
	family string
	size   float64
	bold   bool
}

// bundledFonts maps each family to the Go font files it falls back to when no
// installed font matches. The Go fonts ship with x/image, so a card rendered
// without system fonts looks the same on every host.
var bundledFonts = map[FontFamily][2][]byte{
	FontInter:           {goregular.TTF, gobold.TTF},
	FontRoboto:          {goregular.TTF, gobold.TTF},
	FontMontserrat:      {gomedium.TTF, gobold.TTF},
	FontPlayfairDisplay: {goitalic.TTF, gobolditalic.TTF},
	FontLora:            {gomediumitalic.TTF, gobolditalic.TTF},
}

// FontCache manages font loading and face caching.
// When system lookup is enabled it searches the OS font directories and any
// extra directories for .ttf/.otf/.ttc files whose family name matches the
// requested FontFamily. Faces are cached per size and weight.
//
// Faces returned by the cache are not safe for concurrent drawing; callers
// that share a cache across goroutines must serialize rendering.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	system  bool
	fonts   map[string]*opentype.Font // lowercase family name -> parsed font
	bundled map[string]*opentype.Font // "family/bold" -> parsed Go font
	faces   map[fontKey]font.Face
	scanned bool
}

// NewFontCache creates a FontCache that uses only the bundled Go fonts plus
// whatever is registered through LoadFont/LoadFontData.
func NewFontCache() *FontCache {
	return &FontCache{
		fonts:   make(map[string]*opentype.Font),
		bundled: make(map[string]*opentype.Font),
		faces:   make(map[fontKey]font.Face),
	}
}

// NewSystemFontCache creates a FontCache that also searches the OS font
// directories and extraDirs for installed families.
func NewSystemFontCache(extraDirs ...string) *FontCache {
	fc := NewFontCache()
	fc.system = true
	fc.dirs = append(systemFontDirs(), extraDirs...)
	return fc
}

// GetFace returns a face for the family at sizePx (pixels, DPI 72).
// It never returns nil: installed fonts win over bundled ones, and
// basicfont.Face7x13 is the last resort.
func (fc *FontCache) GetFace(family FontFamily, sizePx float64, bold bool) font.Face {
	if fc.system {
		fc.ensureScanned()
	}

	key := fontKey{family: strings.ToLower(string(family)), size: sizePx, bold: bold}

	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	f := fc.findFont(key.family, bold)
	if f == nil {
		f = fc.bundledFont(family, bold)
	}
	if f == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}

	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face
}

// findFont looks up an installed or registered font by family, trying the
// bold variants first when bold is requested.
func (fc *FontCache) findFont(lower string, bold bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	if bold {
		for _, suffix := range []string{" bold", "-bold", "bd", "b"} {
			if f, ok := fc.fonts[lower+suffix]; ok {
				return f
			}
		}
	}
	if f, ok := fc.fonts[lower]; ok {
		return f
	}
	// Families such as "Playfair Display" are often installed without spaces.
	if f, ok := fc.fonts[strings.ReplaceAll(lower, " ", "")]; ok {
		return f
	}
	return nil
}

// clone returns a cache holding the same parsed fonts with an empty face
// cache. Parsed fonts are shared; faces are per cache.
func (fc *FontCache) clone() *FontCache {
	if fc.system {
		fc.ensureScanned()
	}
	c := NewFontCache()

	fc.mu.RLock()
	defer fc.mu.RUnlock()
	c.system = fc.system
	c.scanned = fc.scanned
	c.dirs = append([]string(nil), fc.dirs...)
	maps.Copy(c.fonts, fc.fonts)
	maps.Copy(c.bundled, fc.bundled)
	return c
}

func (fc *FontCache) bundledFont(family FontFamily, bold bool) *opentype.Font {
	files := bundledFonts[FontInter]
	for _, known := range FontFamilies {
		if strings.EqualFold(string(known), string(family)) {
			files = bundledFonts[known]
			break
		}
	}
	idx := 0
	if bold {
		idx = 1
	}
	key := fmt.Sprintf("%s/%t", strings.ToLower(string(family)), bold)

	fc.mu.RLock()
	f, ok := fc.bundled[key]
	fc.mu.RUnlock()
	if ok {
		return f
	}

	f, err := opentype.Parse(files[idx])
	if err != nil {
		return nil
	}
	fc.mu.Lock()
	fc.bundled[key] = f
	fc.mu.Unlock()
	return f
}

// LoadFont loads a TrueType/OpenType font file and registers it under the
// given family name. Returns an error if the file exceeds maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
// Cached faces for the family are dropped so the next GetFace picks it up.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	lower := strings.ToLower(name)
	fc.mu.Lock()
	fc.fonts[lower] = f
	for key := range fc.faces {
		if key.family == lower {
			delete(fc.faces, key)
		}
	}
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		ext := filepath.Ext(lower)
		if ext != ".ttf" && ext != ".otf" && ext != ".ttc" && ext != ".otc" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		if ext == ".ttc" || ext == ".otc" {
			coll, err := opentype.ParseCollection(data)
			if err != nil {
				continue
			}
			for i := 0; i < coll.NumFonts(); i++ {
				if f, err := coll.Font(i); err == nil {
					fc.registerByFamilyName(f)
				}
			}
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		fc.fonts[strings.TrimSuffix(lower, ext)] = f
		fc.registerByFamilyName(f)
	}
}

// registerByFamilyName registers f under its family and full names.
// Caller holds fc.mu.
func (fc *FontCache) registerByFamilyName(f *opentype.Font) {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		lower := strings.ToLower(name)
		if _, taken := fc.fonts[lower]; !taken {
			fc.fonts[lower] = f
		}
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		fc.fonts[strings.ToLower(name)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
