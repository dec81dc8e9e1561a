// Package branding applies a branding profile to the engine tree.
//
// Apply runs a fixed sequence of named steps:
//
//	validate  profile exists and holds every required file
//	resolve   merge identity, default brand constants and overrides
//	clear     remove and recreate the profile's output tree
//	icons     render the icon set from logo.png
//	locale    render locale templates into locales/en-US
//	sync      copy the reference tree, skipping existing files
//
// The first failing step stops the run. Nothing is written before the
// clear step, so validation failures leave the project untouched. The
// output tree is owned by Apply for the duration of the call; callers must
// not run two applies for the same profile at once.
package branding
