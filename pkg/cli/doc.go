// Package cli provides common CLI utilities for the pcbuf command-line tool.
//
// This package includes:
//   - Run profiles: named orchestrator configurations stored as YAML
//   - Run file loading (YAML/JSON)
//   - Output formatting (YAML, JSON, msgpack, styled summary)
//   - Log capture into a bounded window of recent lines
//
// Configuration is stored in os.UserConfigDir()/pcbuf/config.yaml unless
// the PCBUF_CONFIG_DIR environment variable points elsewhere.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//	if err != nil {
//		return err
//	}
//	run, err := cfg.ResolveProfile("")
//
//	cli.Output(report, cli.OutputOptions{
//		Format: cli.FormatJSON,
//		File:   outputPath,
//	})
package cli
