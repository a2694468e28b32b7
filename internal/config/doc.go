// Package config provides configuration parsing for markup projects.
//
// The configuration is stored in markup.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "indent": 4
//	  },
//	  "output": {
//	    "dir": "public",
//	    "file": "index.html",
//	    "sink": "s3"
//	  },
//	  "s3": {
//	    "bucket": "my-site",
//	    "prefix": "preview/",
//	    "region": "eu-west-1"
//	  },
//	  "clone": {
//	    "policy": "ids",
//	    "suffixMax": 100
//	  },
//	  "metrics": {
//	    "namespace": "markup"
//	  }
//	}
//
// Every field is optional; missing ones take the defaults from New.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	arena := markup.NewArena(cfg.ArenaOptions()...)
package config
