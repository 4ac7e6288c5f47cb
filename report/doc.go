// Package report writes health reports for humans and machines: indented
// JSON on any writer, an atomically replaced report file, and a terminal
// table with an optional colorized verdict.
package report
