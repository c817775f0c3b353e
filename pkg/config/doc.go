/*
Package config manages configuration parsing and validation for repairrc.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Selects the corpus (root, extensions, ignore globs)
- Selects which built-in passes run and how (jobs, converge)
- Declares file roles and custom passes built from rule records

🔄 Flow:
1. LoadOrDefault finds .repairrc.{hcl,yaml,yml,json} or falls back to Default
2. The registered Parser for the extension decodes the file
3. Validate fills in defaults and checks globs, roles and custom rules
4. Pipeline and RoleMap hand the result to the engine

🔍 Example (HCL):

	root       = "lib"
	extensions = [".dart"]
	passes     = builtin_passes
	converge   = 3

	role "views" {
	  globs = ["views/**"]
	}

	pass "local-fixes" {
	  rule "drop-foo" {
	    pattern = "foo\\(\\)"
	    replace = "bar()"
	    roles   = ["views"]
	  }
	}

Globs and paths in rules are relative to the root. Custom passes always run
after the built-in ones.
*/
package config
