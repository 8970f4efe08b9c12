package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Memory.BlockSize != DefaultBlockSize {
		t.Errorf("BlockSize = %d, want %d", c.Memory.BlockSize, DefaultBlockSize)
	}
	if c.Memory.MaxBlocks != 0 {
		t.Errorf("MaxBlocks = %d, want 0 (unlimited)", c.Memory.MaxBlocks)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Memory.BlockSize != DefaultBlockSize {
		t.Errorf("BlockSize = %d, want %d", c.Memory.BlockSize, DefaultBlockSize)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := `
[memory]
block-size = 256
max-blocks = 8
`
	if err := os.WriteFile(filepath.Join(dir, "ember.toml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Memory.BlockSize != 256 {
		t.Errorf("BlockSize = %d, want 256", c.Memory.BlockSize)
	}
	if c.Memory.MaxBlocks != 8 {
		t.Errorf("MaxBlocks = %d, want 8", c.Memory.MaxBlocks)
	}
	if c.Dir != dir {
		t.Errorf("Dir = %q, want %q", c.Dir, dir)
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	dir := t.TempDir()
	data := `
[memory]
block-size = 0
max-blocks = -3
`
	if err := os.WriteFile(filepath.Join(dir, "ember.toml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Memory.BlockSize != DefaultBlockSize {
		t.Errorf("BlockSize = %d, want default %d", c.Memory.BlockSize, DefaultBlockSize)
	}
	if c.Memory.MaxBlocks != 0 {
		t.Errorf("MaxBlocks = %d, want 0", c.Memory.MaxBlocks)
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ember.toml"), []byte("[memory\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}
