// Package effectchain builds serial processor chains from JSON.
//
// A chain file names processors from a [Registry] and optionally a semantic
// version constraint every processor must satisfy:
//
//	{
//	  "requires": ">=1.0.0",
//	  "processors": [
//	    {"id": "lp", "type": "hexed-filter", "params": {"freq": 40, "res": 30, "percent": 100}},
//	    {"type": "bark-compressor", "params": {"threshold": -12, "ratio": 3}}
//	  ]
//	}
//
// Parameter keys match a processor parameter's symbol or name.
package effectchain
