// Command shelfpace tracks audiobook listening pace, annual goals, and
// lifetime reading statistics from the terminal.
package main
