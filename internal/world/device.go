// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// DeviceType identifies the kind of electronic device.
type DeviceType string

// Device types.
const (
	DeviceTerminal     DeviceType = "terminal"
	DeviceServer       DeviceType = "server"
	DeviceSecurityCam  DeviceType = "security_camera"
	DeviceDoorLock     DeviceType = "door_lock"
	DeviceDrone        DeviceType = "drone"
	DevicePersonalDeck DeviceType = "personal_deck"
	DeviceImplantHub   DeviceType = "implant_hub"
	DeviceATM          DeviceType = "atm"
)

// OSType identifies a device operating system.
type OSType string

// Operating systems.
const (
	OSGridware  OSType = "gridware"
	OSNeonOS    OSType = "neon_os"
	OSBlackline OSType = "blackline"
	OSLegacyUX  OSType = "legacy_ux"
)

// Device is an electronic device placed in a building or carried by a character.
type Device struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	LocationID    ulid.ULID
	BuildingID    *ulid.ULID // Set when the device sits inside a building.
	OwnerID       *ulid.ULID // Set when a character carries the device.
	Type          DeviceType
	OS            OSType
	SecurityLevel int
	IPAddress     string
	CreatedAt     time.Time
}

// Validate checks the device's fields.
func (d *Device) Validate() error {
	if d.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if d.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if d.LocationID.IsZero() {
		return &ValidationError{Field: "location_id", Message: "cannot be zero"}
	}
	return ValidateSecurityLevel(d.SecurityLevel)
}

// NetworkType identifies the kind of network inside a building.
type NetworkType string

// Network types.
const (
	NetworkCorporate NetworkType = "corporate"
	NetworkPublic    NetworkType = "public"
	NetworkSecurity  NetworkType = "security"
	NetworkIndustrial NetworkType = "industrial"
	NetworkDarknet   NetworkType = "darknet"
)

// EncryptionType identifies a network's encryption scheme, weakest first.
type EncryptionType string

// Encryption schemes. Stronger security tiers always pair with stronger
// encryption; the generator samples them jointly.
const (
	EncryptionNone     EncryptionType = "none"
	EncryptionBasic    EncryptionType = "basic"
	EncryptionStandard EncryptionType = "standard"
	EncryptionMilitary EncryptionType = "military"
	EncryptionQuantum  EncryptionType = "quantum"
)

// Network is a network hosted by a building.
type Network struct {
	ID              ulid.ULID
	WorldID         ulid.ULID
	BuildingID      ulid.ULID
	Type            NetworkType
	Name            string
	SecurityLevel   int
	Encryption      EncryptionType
	IsHidden        bool
	RequiresHacking bool
	CreatedAt       time.Time
}

// Validate checks the network's fields.
func (n *Network) Validate() error {
	if n.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if n.BuildingID.IsZero() {
		return &ValidationError{Field: "building_id", Message: "cannot be zero"}
	}
	return ValidateSecurityLevel(n.SecurityLevel)
}

// PuzzleTargetKind identifies what a hacking puzzle is attached to.
type PuzzleTargetKind string

// Puzzle target kinds.
const (
	PuzzleTargetDevice  PuzzleTargetKind = "device"
	PuzzleTargetNetwork PuzzleTargetKind = "network"
)

// ErrInvalidPuzzleTarget indicates an unrecognized puzzle target kind.
var ErrInvalidPuzzleTarget = &ValidationError{Field: "target_kind", Message: "must be device or network"}

// Validate checks that the target kind is a recognized value.
func (k PuzzleTargetKind) Validate() error {
	switch k {
	case PuzzleTargetDevice, PuzzleTargetNetwork:
		return nil
	default:
		return ErrInvalidPuzzleTarget
	}
}

// PuzzleType identifies the kind of hacking challenge.
type PuzzleType string

// Puzzle types.
const (
	PuzzlePasswordCrack PuzzleType = "password_crack"
	PuzzleFirewallBreak PuzzleType = "firewall_break"
	PuzzleCipherDecode  PuzzleType = "cipher_decode"
	PuzzleTraceEvade    PuzzleType = "trace_evade"
	PuzzleICEBreaker    PuzzleType = "ice_breaker"
)

// HackingPuzzle is a challenge attached to a device or network. Its difficulty
// is derived from the target's security posture, clamped to [1,5].
type HackingPuzzle struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	TargetKind    PuzzleTargetKind
	TargetID      ulid.ULID
	Type          PuzzleType
	Difficulty    int
	RewardCredits int
	RewardXP      int
	CreatedAt     time.Time
}

// Validate checks the puzzle's fields.
func (p *HackingPuzzle) Validate() error {
	if p.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if err := p.TargetKind.Validate(); err != nil {
		return err
	}
	if p.TargetID.IsZero() {
		return &ValidationError{Field: "target_id", Message: "cannot be zero"}
	}
	if p.Difficulty < MinSecurityLevel || p.Difficulty > MaxSecurityLevel {
		return &ValidationError{Field: "difficulty", Message: "must be between 1 and 5"}
	}
	return nil
}
