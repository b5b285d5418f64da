/*
Package config loads template variables and catalog seed files.

# Overview

config wraps a map[string]any decoded from YAML or JSON. FromFile reports
load failures as a *FileError naming the file.

	cfg, err := config.FromFile("routes.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	templates, err := cfg.Templates() // name -> "{?q,lang}"
	vars, err := cfg.Sub("variables").Variables()

# Variables

Variables converts a section into values accepted by uritemplate.ValueOf:

	q: cat               -> "cat"
	lang: [en, fr]       -> []string{"en", "fr"}
	keys: {semi: ";"}    -> map[string]string{"semi": ";"}
	port: 8080           -> "8080"

Lists and maps nested more than one level deep are rejected.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
