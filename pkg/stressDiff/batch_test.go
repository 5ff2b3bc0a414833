package stressDiff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDataDir(t *testing.T, names ...string) string {
	t.Helper()
	var dir = t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("g1\t1\t2.0\t0.1\t5.0\t0.001\t0.01\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBatch_DetectInputs(t *testing.T) {
	// Test case 1: keyword match on the filenames
	t.Run("keyword match", func(t *testing.T) {
		var dir = writeDataDir(t, "heat_deseq2_results.tabular", "salt_deseq2_results.tabular", "README.md")
		var batch = &Batch{DataDir: dir}
		if err := batch.DetectInputs(); err != nil {
			t.Fatal(err)
		}
		if filepath.Base(batch.HeatPath) != "heat_deseq2_results.tabular" {
			t.Errorf("HeatPath = %s", batch.HeatPath)
		}
		if filepath.Base(batch.SaltPath) != "salt_deseq2_results.tabular" {
			t.Errorf("SaltPath = %s", batch.SaltPath)
		}
	})

	// Test case 2: a deseq-named file beats other candidates
	t.Run("deseq preferred", func(t *testing.T) {
		var dir = writeDataDir(t, "heat_notes.txt", "heat_deseq2.tabular", "salt_deseq2.tabular")
		var batch = &Batch{DataDir: dir}
		if err := batch.DetectInputs(); err != nil {
			t.Fatal(err)
		}
		if filepath.Base(batch.HeatPath) != "heat_deseq2.tabular" {
			t.Errorf("HeatPath = %s", batch.HeatPath)
		}
	})

	// Test case 3: explicit paths are never overridden
	t.Run("explicit paths win", func(t *testing.T) {
		var batch = &Batch{HeatPath: "a.tsv", SaltPath: "b.tsv"}
		if err := batch.DetectInputs(); err != nil {
			t.Fatal(err)
		}
		if batch.HeatPath != "a.tsv" || batch.SaltPath != "b.tsv" {
			t.Errorf("paths changed: %s %s", batch.HeatPath, batch.SaltPath)
		}
	})

	// Test case 4: no matching files
	t.Run("no candidates", func(t *testing.T) {
		var batch = &Batch{DataDir: writeDataDir(t, "control.tabular")}
		var notFound *NotFoundError
		if err := batch.DetectInputs(); !errors.As(err, &notFound) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}

func TestBatch_GenesSubsetsGeneIDs(t *testing.T) {
	var dir = t.TempDir()
	var heatData = "" +
		"g1\t10\t2.5\t0.1\t5.0\t0.001\t0.01\n" +
		"g2\t10\t-1.8\t0.1\t-4.0\t0.002\t0.02\n" +
		"g3\t10\t0.2\t0.1\t0.5\t0.5\t0.9\n"
	var saltData = "" +
		"g2\t10\t-2.0\t0.1\t-4.5\t0.001\t0.01\n" +
		"g4\t10\t3.1\t0.1\t6.0\t0.0001\t0.001\n"
	if err := os.WriteFile(filepath.Join(dir, "heat.tabular"), []byte(heatData), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "salt.tabular"), []byte(saltData), 0644); err != nil {
		t.Fatal(err)
	}

	var batch = &Batch{
		HeatPath: filepath.Join(dir, "heat.tabular"),
		SaltPath: filepath.Join(dir, "salt.tabular"),
		OutDir:   filepath.Join(dir, "out"),
		Th:       DefaultThresholds(),
	}
	if err := batch.Genes(); err != nil {
		t.Fatal(err)
	}
	if err := batch.Subsets(); err != nil {
		t.Fatal(err)
	}
	if err := batch.GeneIDs(); err != nil {
		t.Fatal(err)
	}

	// Test case 1: the weak g3 row never reaches the significant set
	raw, err := os.ReadFile(filepath.Join(batch.OutDir, "CSV_datasets", "heat_significant_genes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "g3") {
		t.Error("g3 should not be significant")
	}

	// Test case 2: the partition files land in place
	for _, name := range []string{"both_stress_genes.csv", "only_salt_genes.csv", "only_heat_genes.csv"} {
		if _, err := os.Stat(filepath.Join(batch.OutDir, "sorted_gene_subsets", name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// Test case 3: g4 is salt-only and up-regulated
	ids, err := os.ReadFile(filepath.Join(batch.OutDir, "significant_gene_ids", "salt_up.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(ids)) != "g4" {
		t.Errorf("salt_up.txt = %q; want g4", ids)
	}

	// Test case 4: g2 is shared and down-regulated on both sides
	both, err := os.ReadFile(filepath.Join(batch.OutDir, "significant_gene_ids", "both_down.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(both)) != "g2" {
		t.Errorf("both_down.txt = %q; want g2", both)
	}
}
