// Package model defines the core data types shared across Dripfeed.
package model

import (
	"fmt"
	"math/rand"
	"time"
)

// MediaKind distinguishes still memes from short looping clips.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Drip is one unit of feed content: a fact, a caption, and a media reference.
// MediaURL is either a remote URL or an inline data: payload.
type Drip struct {
	ID              string    `json:"id" yaml:"id"`
	Fact            string    `json:"fact" yaml:"fact"`
	FunnyCaption    string    `json:"funnyCaption" yaml:"funnyCaption"`
	MediaURL        string    `json:"mediaUrl" yaml:"mediaUrl"`
	MediaKind       MediaKind `json:"mediaType" yaml:"mediaType"`
	IsUserGenerated bool      `json:"isUserGenerated,omitempty" yaml:"isUserGenerated,omitempty"`
	Author          string    `json:"author,omitempty" yaml:"author,omitempty"`
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewDripID returns an ID for AI-generated content: unix millis plus a short
// random suffix, unique enough for queue and cache collections.
func NewDripID() string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

// NewUserDripID returns an ID for user-submitted content.
func NewUserDripID() string {
	return fmt.Sprintf("%d-user", time.Now().UnixMilli())
}

// DedupByID removes duplicate drips, keeping the earliest-seen occurrence of
// each ID and preserving order. Single pass over a set, no rescans.
func DedupByID(drips []Drip) []Drip {
	seen := make(map[string]struct{}, len(drips))
	out := drips[:0:0]
	for _, d := range drips {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}
