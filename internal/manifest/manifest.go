package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const FileName = "manifest.yaml"

// Manifest describes one generation run, written next to its flat files.
type Manifest struct {
	RunID       string             `yaml:"run_id"`
	GeneratedAt time.Time          `yaml:"generated_at"`
	Seed        int64              `yaml:"seed"`
	FakerSeed   int64              `yaml:"faker_seed"`
	Provider    string             `yaml:"provider,omitempty"`
	Format      string             `yaml:"format"`
	Loaded      bool               `yaml:"loaded"`
	Tables      []types.TableCount `yaml:"tables"`
	Files       []string           `yaml:"files,omitempty"`
}

func New(generatedAt time.Time, seed, fakerSeed int64) Manifest {
	return Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: generatedAt.UTC(),
		Seed:        seed,
		FakerSeed:   fakerSeed,
	}
}

func (m Manifest) Rows(table string) (int, bool) {
	for _, t := range m.Tables {
		if t.Name == table {
			return t.Rows, true
		}
	}
	return 0, false
}

func Write(dir string, m Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

func Read(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
