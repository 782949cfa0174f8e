package detector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeMap(t *testing.T, path string, crc uint32) {
	t.Helper()

	data := fmt.Sprintf("supported_roms = [{ name = \"Test\", crc = %d }]\n", crc)
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestMapPathForRom(t *testing.T) {
	assert.Equal(t, "roms/game.toml", mapPathForRom("roms/game.sfc"))
	assert.Equal(t, "game.toml", mapPathForRom("game"))
}

//nolint:funlen // test functions can be long
func TestDetect(t *testing.T) {
	r := rom.New([]byte{0x01, 0x02})
	dir := t.TempDir()
	romPath := filepath.Join(dir, "game.sfc")

	t.Run("explicit compatible map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.toml")
		writeMap(t, path, r.CRC())

		d := New(log.NewTestLogger(t))
		det, err := d.Detect(options.Program{Parameters: options.Parameters{Input: romPath, RomMap: path}}, r)
		assert.NoError(t, err)
		assert.NotNil(t, det.Map)
		assert.False(t, det.Forced)
		assert.Equal(t, path, det.Path)
	})

	t.Run("explicit incompatible map is forced", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.toml")
		writeMap(t, path, r.CRC()+1)

		d := New(log.NewTestLogger(t))
		det, err := d.Detect(options.Program{Parameters: options.Parameters{Input: romPath, RomMap: path}}, r)
		assert.NoError(t, err)
		assert.True(t, det.Forced)
	})

	t.Run("explicit map missing", func(t *testing.T) {
		d := New(log.NewTestLogger(t))
		_, err := d.Detect(options.Program{Parameters: options.Parameters{RomMap: filepath.Join(dir, "none.toml")}}, r)
		assert.ErrorContains(t, err, "reading rom map")
	})

	t.Run("no map", func(t *testing.T) {
		d := New(log.NewTestLogger(t))
		_, err := d.Detect(options.Program{Parameters: options.Parameters{Input: romPath}}, r)
		assert.True(t, errors.Is(err, ErrNoRomMap))
	})

	t.Run("map next to rom", func(t *testing.T) {
		writeMap(t, filepath.Join(dir, "game.toml"), r.CRC())

		d := New(log.NewTestLogger(t))
		det, err := d.Detect(options.Program{Parameters: options.Parameters{Input: romPath}}, r)
		assert.NoError(t, err)
		assert.False(t, det.Forced)
		assert.Equal(t, filepath.Join(dir, "game.toml"), det.Path)
	})

	t.Run("incompatible map next to rom is ignored", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.sfc")
		writeMap(t, mapPathForRom(other), r.CRC()+1)

		d := New(log.NewTestLogger(t))
		_, err := d.Detect(options.Program{Parameters: options.Parameters{Input: other}}, r)
		assert.True(t, errors.Is(err, ErrNoRomMap))
	})
}
