// Package extract turns user input into slot updates. Two strategies share
// the Extractor interface: Structured replays field values that an upstream
// tool-call layer already segmented, and Keyword scans raw utterance text
// against fixed per-field vocabularies. Extraction never fails; text that
// matches nothing simply produces no updates.
package extract
