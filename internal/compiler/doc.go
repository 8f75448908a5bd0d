// Package compiler turns raw definition bytes into frozen automata.
//
// Two syntaxes are understood: the line-oriented "states / transitions" text
// format and a structured document format written in YAML or JSON.
package compiler
