// Package rotation defines the commands that turn the dial and the parser
// that reads them from text. A command is a direction (L or R) followed by a
// non-negative number of clicks, for example "R48" or "L5".
package rotation
