//go:build lateinit_release

package contract

const checksEnabled = false
