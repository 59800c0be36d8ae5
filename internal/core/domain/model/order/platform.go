package order

import (
	"fmt"
	"strings"

	"printflow/internal/pkg/errs"
)

// Platform is the sales channel an order was placed through.
type Platform int

const (
	// UnknownPlatform represents an invalid or undefined platform.
	UnknownPlatform Platform = iota

	Shopify
	Etsy

	// CustomOrder covers orders taken outside the online shops.
	CustomOrder
)

var platformNames = map[Platform]string{
	Shopify:     "Shopify",
	Etsy:        "Etsy",
	CustomOrder: "Custom Order",
}

// AllPlatforms returns the valid platforms.
func AllPlatforms() []Platform {
	return []Platform{Shopify, Etsy, CustomOrder}
}

// ParsePlatform resolves a platform name case-insensitively. "Custom Order",
// "custom_order" and "CustomOrder" all resolve to CustomOrder.
func ParsePlatform(name string) (Platform, error) {
	normalized := normalizePlatformName(name)
	for _, p := range AllPlatforms() {
		if normalizePlatformName(platformNames[p]) == normalized {
			return p, nil
		}
	}
	return UnknownPlatform, errs.NewValueIsInvalidErrorWithCause(
		"platform is invalid",
		fmt.Errorf("%q is not a known platform", name),
	)
}

func normalizePlatformName(name string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(name)))
}

// Validate checks that the platform is one of the supported channels.
func (p Platform) Validate() error {
	if _, ok := platformNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("platform is invalid", fmt.Errorf("%d is not a valid platform", p))
	}
	return nil
}

// String returns the display name stored in the database, or "Unknown".
func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "Unknown"
}
