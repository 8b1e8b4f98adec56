// Package cli implements the basket command-line interface.
//
// # Commands
//
// recommend - recommend products for a basket:
//
//	basket recommend --rules association_rules.csv --item "WHITE METAL LANTERN" [--top-n 5]
//
// Items are given with repeated --item flags or a comma separated --items list.
// An empty basket is an error. An empty result is not: table output prints
// "no recommendations found".
//
// products - list catalog products:
//
//	basket products --data cleaned_data.csv [--prefix WHITE] [--limit 50]
//
// rules - summarize a rule table:
//
//	basket rules --rules association_rules.csv
//
// # Global Flags
//
//	--log-level    debug, info, warn or error (default: info, env LOG_LEVEL)
//	--debug        shorthand for --log-level debug
//	--help, -h     show command help
//	--version, -v  show version information
//
// # Output
//
// Every command accepts --format table|json|yaml (default: table) and
// --output FILE (default: stdout).
//
// Rule and product sources may be local paths or HTTP/HTTPS URLs.
// The process exits with status 1 on error.
package cli
