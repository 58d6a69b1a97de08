/*
Package config loads batchrename settings from YAML, JSON, HCL or TOML.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +--------+------+------+--------+
	   |        |             |        |
	+--+---+ +--+---+     +---+--+ +---+--+
	| YAML | | JSON |     | HCL  | | TOML |
	+------+ +------+     +------+ +------+

🎯 Purpose:
- Picks a parser by file extension through a small registry
- Rejects unknown fields in every format
- Fills in defaults and validates globs, failure policy and log level

📄 Example (.batchrename.yaml):

	script: rules.brs
	include: ["*.jpg", "*.jpeg"]
	exclude: ["tmp_*"]
	on_failure: rollback
	allow_duplicates: false
	log_level: info

🔍 Lookup:
Find uses an explicit --config path when given, otherwise the first of
DefaultFiles present in the working directory, otherwise Default().
*/
package config
