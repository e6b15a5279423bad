// Package plan holds the in-memory plan catalogue. A Store keeps plans in
// insertion order, admits new ones through Draft.Validate, and publishes a
// Change to its subscribers after every successful mutation.
package plan
