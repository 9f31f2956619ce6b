/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mwalcott3/guildsched-rosterbot/armory"
	"github.com/mwalcott3/guildsched-rosterbot/guildsched"
)

// this program exists just to seed the http cache for upcoming events'
// signups and their armory pages

func main() {
	ctx := context.Background()
	client := armory.NewClient(ctx)

	events, err := guildsched.GetEvents()
	if err != nil {
		// best effort
		return
	}

	var eg errgroup.Group
	eg.SetLimit(4) // avoid pegging the armory

	for _, event := range events {
		detail, err := guildsched.GetEventDetail(int64(event.EventID))
		if err != nil {
			// best effort
			continue
		}
		fmt.Printf("seeded ev:%v\n", detail.Title)

		for _, signup := range detail.Signups {
			if signup.CharacterName == "" || signup.CharacterRealm == "" {
				continue
			}
			realm := signup.CharacterRealm
			name := signup.CharacterName
			eg.Go(func() error {
				char, err := client.FetchCharacter(ctx, realm, name)
				if err != nil {
					// best effort
					return nil
				}
				fmt.Printf("seeded %v-%v character data\n", char.Name,
					char.Realm)
				return nil
			})
		}
	}

	_ = eg.Wait()
}
