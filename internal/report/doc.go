// Package report renders solve outcomes for people and programs. Every
// writer implements gonewton.Display.
//
// Formats:
//   - markdown: GitHub-flavoured markdown, optionally rendered for the
//     terminal with glamour
//   - text: compact status lines, coloured when the output is a terminal
//   - json: the Outcome JSON document
package report
