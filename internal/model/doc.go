package model

// Package model defines the domain records shared across the app: queue entries,
// resolved media coming back from the extractor, formats, and the typed events
// workers emit. Records are plain values so snapshots can be handed to the UI.
