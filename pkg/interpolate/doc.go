// Package interpolate substitutes request parameters into source templates and
// follows "#id" references back into a source lookup. Substitution is applied
// recursively through List and Map sources; Func sources pass through
// untouched.
package interpolate
