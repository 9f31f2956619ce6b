/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "guildsched-rosterbot/0.4.1 (+https://github.com/mwalcott3/guildsched-rosterbot)"
	WebCacheBucket = "guildsched-rosterbot-prod-webcache"

	// GuildSched public endpoints
	APIBaseURL = "https://api.guildsched.gg"
	WebBaseURL = "https://guildsched.gg"

	// character armory
	ArmoryBaseURL = "https://armory.guildsched.gg"
)
