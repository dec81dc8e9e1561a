// Package icons derives the full icon set of a brand from its master logo.
//
// One square PNG (the profile's logo.png) is decoded once and scaled with
// Catmull-Rom resampling into a fixed list of artifacts:
//
//	<profile>/logo{16,22,24,32,48,64,128,256}.png
//	<store>/default{16,22,24,32,48,64,128,256}.png
//	<store>/firefox.ico                  512px
//	<store>/firefox64.ico                64px
//	<store>/content/about-logo.png       512px
//	<store>/content/about-logo@2x.png    1024px
//
// Every artifact is overwritten on each run. Generate returns only after
// all renders and writes have finished, so callers never proceed with a
// partial set.
package icons
