//go:build !oamrelease

package oam

const contractChecks = true
