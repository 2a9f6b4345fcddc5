// Package core contains pipeline plumbing: channel helpers, the worker count
// carried via context, and the locomotive that drives one worker line. It
// holds no business logic; lite and mass build their stages on top of it.
package core
