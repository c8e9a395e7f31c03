// Package numseq holds small numeric utilities exposed by the tools
// subcommands. They are standalone and share nothing with the sync pipeline.
package numseq

import "strconv"

// Sequence returns the fizzbuzz values from 1 through n: multiples of three
// become "Fizz", multiples of five "Buzz", multiples of both "FizzBuzz", and
// everything else its decimal form.
func Sequence(n int) []string {
	if n < 1 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		switch {
		case i%15 == 0:
			out = append(out, "FizzBuzz")
		case i%3 == 0:
			out = append(out, "Fizz")
		case i%5 == 0:
			out = append(out, "Buzz")
		default:
			out = append(out, strconv.Itoa(i))
		}
	}
	return out
}

// IsPrime reports whether n is prime, checking odd divisors up to sqrt(n).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
