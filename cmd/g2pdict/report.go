package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ieee0824/g2pdict/g2p"
)

// report is the YAML form of a generate run.
type report struct {
	OOVList    string            `yaml:"oov_list"`
	Dictionary string            `yaml:"dictionary"`
	Processed  int               `yaml:"processed"`
	Certain    map[string]string `yaml:"certain"`
	Guessed    map[string]string `yaml:"guessed"`
	Undecided  map[string]string `yaml:"undecided"`
	Dropped    []string          `yaml:"dropped,omitempty"`
	Failed     []failure         `yaml:"failed,omitempty"`
	// Silent words: every unit of the pronunciation is silent.
	Silent []string `yaml:"silent,omitempty"`
}

type failure struct {
	Word  string `yaml:"word"`
	Error string `yaml:"error"`
}

func newReport(oovPath, dictPath string, res *g2p.Result) report {
	r := report{
		OOVList:    oovPath,
		Dictionary: dictPath,
		Processed:  res.Processed,
		Certain:    res.Certain.Strings(),
		Guessed:    res.Guessed.Strings(),
		Undecided:  res.Undecided.Strings(),
		Dropped:    res.Dropped,
	}
	for _, f := range res.Failed {
		r.Failed = append(r.Failed, failure{Word: f.Word, Error: f.Err.Error()})
	}
	for _, t := range []g2p.Tier{g2p.Certain, g2p.Guessed} {
		for _, e := range res.Tier(t).All() {
			if len(e.Pronunciation.Audible()) == 0 {
				r.Silent = append(r.Silent, e.Word)
			}
		}
	}
	return r
}

func writeReport(path string, r report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
