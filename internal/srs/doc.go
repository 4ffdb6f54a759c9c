// Package srs implements SM-2 style review scheduling for flashcards.
//
// Everything here is a pure function of its inputs. The current time and the
// reference day are always supplied by the caller:
//
//	next := srs.Apply(card.Progress, srs.Good, time.Now())
//	session := srs.Select(cards, time.Now(), srs.DefaultNewCardLimit)
//	stats := srs.Summarize(cards, time.Now())
package srs
