// Package ui implements the site's interaction model: the mobile navigation
// drawer, accordions, the intro video overlay and the scroll-reactive header.
//
// Controllers are driven by discrete events (key presses, clicks, scroll
// offsets, media callbacks, timer firings). Anything a controller registers
// while a disclosure is open, such as an escape listener, a scroll lease or a
// timer, is released on every path that closes it.
package ui
