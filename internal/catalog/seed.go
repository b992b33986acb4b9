package catalog

// Seed returns the version-controlled event data the catalog is built from at startup.
func Seed() []Event {
	return []Event{
		{
			ID:          "igbo-amaka-festival",
			Title:       "Igbo Amaka Festival",
			Description: "Celebrate the rich cultural heritage of the Igbo people with traditional music, dance, and cuisine.",
			LongDescription: `<p>Igbo Amaka Festival is a celebration of the rich cultural heritage of the Igbo people, showcasing traditional music, dance, art, and cuisine.</p>
<p>This immersive cultural experience includes:</p>
<ul>
  <li>Traditional Igbo music and dance performances</li>
  <li>Cultural exhibitions and demonstrations</li>
  <li>Authentic Igbo cuisine</li>
  <li>Traditional fashion showcase</li>
  <li>Cultural workshops and storytelling</li>
</ul>
<p>Join us for this unique opportunity to experience the beauty and richness of Igbo culture in all its glory!</p>`,
			Date:     "2025-04-13",
			Time:     "2:00 PM",
			Location: "Municipal Garden, Calabar",
			Price:    "#0",
			Category: "Cultural",
			Image:    "/images/events/igbo-amaka.jpg",
			Featured: true,
			TicketTypes: []TicketTier{
				{Name: "Standard", Price: "#0", Description: "General admission with access to all performances and exhibitions"},
				{Name: "VIP", Price: "₦5,000", Description: "Free Abacha"},
				{Name: "Lounge", Price: "₦200,000", Description: "6 persons"},
				{Name: "Table", Price: "₦500,000", Description: "8 persons"},
			},
			Features: []Feature{
				{Icon: "mdi:music", Text: "Traditional Music"},
				{Icon: "mdi:food", Text: "Igbo Cuisine"},
				{Icon: "mdi:dance-ballroom", Text: "Cultural Dances"},
				{Icon: "mdi:palette", Text: "Art Exhibitions"},
			},
			FAQs: []FAQ{
				{Question: "What should I wear to the festival?", Answer: "Traditional Igbo attire is encouraged but not required. Come dressed comfortably and respectfully."},
				{Question: "Will there be activities for children?", Answer: "Yes, we have storytelling sessions and craft activities suitable for children."},
				{Question: "Can I purchase traditional crafts at the event?", Answer: "Yes, there will be vendors selling traditional Igbo crafts, artwork, and clothing."},
				{Question: "Is the venue accessible for people with disabilities?", Answer: "Yes, the venue is wheelchair accessible and has facilities for people with disabilities."},
			},
			Organizer: "Plug Events",
		},
		{
			ID:          "arena-experience",
			Title:       "Echoes Of Love",
			Description: "Echoes of love is a concert event featuring top artists and state-of-the-art production, creating an unforgettable night of music and entertainment.",
			LongDescription: `<p>Experience an immersive concert event featuring top artists and state-of-the-art production, creating an unforgettable night of music and entertainment.</p>
<p>What makes this event special:</p>
<ul>
  <li>Performances by chart-topping artists</li>
  <li>Cutting-edge sound and lighting systems</li>
  <li>Interactive digital experiences</li>
  <li>Exclusive merchandise opportunities</li>
  <li>VIP meet-and-greet options</li>
</ul>
<p>This is more than just a concert - it's a complete sensory experience designed to create memories that will last a lifetime!</p>`,
			Date:     "2025-02-14",
			Time:     "7:00 PM",
			Location: "Bae Arena, Uyo",
			Address:  "Bae Arena, Uyo",
			Price:    "#0",
			Category: "Concert",
			Image:    "/images/events/arena.jpg",
			Featured: true,
			TicketTypes: []TicketTier{
				{Name: "Standard", Price: "#0", Description: "General admission standing"},
			},
			Features: []Feature{
				{Icon: "mdi:music", Text: "Live Performances"},
				{Icon: "mdi:spotlight", Text: "Light Show"},
				{Icon: "mdi:food-fork-drink", Text: "Premium Bars"},
				{Icon: "mdi:shopping", Text: "Merchandise"},
			},
			FAQs: []FAQ{
				{Question: "What time should I arrive?", Answer: "Doors open at 6:00 PM. We recommend arriving early to avoid lines and enjoy the pre-show atmosphere."},
				{Question: "Is there an age restriction?", Answer: "Yes, this event is for attendees 18 years and older. ID will be checked at entry."},
				{Question: "What items are prohibited?", Answer: "Professional cameras, outside food and drinks, large bags, and weapons are not permitted."},
				{Question: "Will there be food available?", Answer: "Yes, there will be various food vendors and bars throughout the venue."},
			},
			Organizer: "Plug Events, DeRok, Teezers",
		},
		{
			ID:          "block-party-2024",
			Title:       "The Block Fiesta",
			Description: "Get ready for an explosion of vibes, music, and non-stop fun",
			LongDescription: `<p>Block Party 2024 brings the community together for a day of celebration with music, food, games, and good vibes on the streets of Lagos.</p>
<p>Join us for:</p>
<ul>
  <li>DJ sets and live performances from local artists</li>
  <li>Street food from the best local vendors</li>
  <li>Games and activities for all ages</li>
  <li>Community art projects</li>
  <li>Local business showcases</li>
</ul>
<p>This is a celebration of our community and culture - come be a part of the biggest block party of the year!</p>`,
			Date:     "2025-04-20",
			Time:     "2:00 PM",
			Location: "Municipal Garden, Marian, Calabar",
			Price:    "₦2,000",
			Category: "Community",
			Image:    "/images/events/block.jpg",
			TicketTypes: []TicketTier{
				{Name: "Standard", Price: "₦2,000", Description: "General admission to all areas"},
				{Name: "Group", Price: "₦10,000", Description: "Entry for 4 people at a discounted rate"},
			},
			Features: []Feature{
				{Icon: "mdi:music", Text: "DJ Sets"},
				{Icon: "mdi:food", Text: "Street Food"},
				{Icon: "mdi:gamepad-variant", Text: "Games"},
				{Icon: "mdi:account-group", Text: "Community"},
			},
			FAQs: []FAQ{
				{Question: "Is the event family-friendly?", Answer: "Yes, this is a family-friendly event with activities for all ages."},
				{Question: "What happens if it rains?", Answer: "The event will proceed rain or shine. We have covered areas in case of light rain, but may postpone for severe weather."},
				{Question: "Can I bring my own food and drinks?", Answer: "We encourage supporting our local food vendors, but small personal snacks are permitted."},
				{Question: "Is there parking available?", Answer: "Limited street parking is available. We recommend using ride-sharing services or public transportation."},
			},
			Organizer: "MITCHY, Nero, Gadi Events, Plug Events",
		},
		{
			ID:    "night-of-fashion",
			Title: "Nollywood Themed Party 1.0",
			Description: `Get Ready for a Night of Nollywood Glam!
Enjoy live music, dancing, and a night of celebration with fellow Nollywood fans!`,
			LongDescription: `<p>Night of Fashion is a glamorous evening showcasing the latest designs from Nigeria's top fashion talents and emerging designers.</p>
<p>This prestigious event features:</p>
<ul>
  <li>Runway shows from established and emerging designers</li>
  <li>Exhibition of avant-garde fashion pieces</li>
  <li>Networking opportunities with industry professionals</li>
  <li>Exclusive after-party with fashion elites</li>
  <li>Pop-up shops with designer pieces</li>
</ul>
<p>Be part of the most stylish night of the year and witness the future of Nigerian fashion unfold before your eyes!</p>`,
			Date:     "2024-11-12",
			Time:     "7:00 PM",
			Location: "Open Pavilion, University of Calabar",
			Address:  "University of Calabar",
			Price:    "₦1,500",
			Category: "Nollywood",
			Image:    "/images/events/night-of-fashion.jpg",
			TicketTypes: []TicketTier{
				{Name: "Standard", Price: "₦1,500", Description: "General seating"},
				{Name: "Friend zone", Price: "₦15,000", Description: "Premium front row seating, swag bag, and access to after-party : Admits 12 persons"},
				{Name: "VIP", Price: "₦4,000", Description: "Front row seating, meet & greet with actors, exclusive swag bag, and VIP after-party access"},
			},
			Features: []Feature{
				{Icon: "mdi:hanger", Text: "Fashion Shows"},
				{Icon: "mdi:glass-cocktail", Text: "Cocktail Reception"},
				{Icon: "mdi:camera", Text: "Photo Opportunities"},
				{Icon: "mdi:shopping", Text: "Designer Pop-ups"},
			},
			FAQs: []FAQ{
				{Question: "What is the dress code?", Answer: "The dress code is formal/cocktail attire. We encourage fashion-forward and creative expressions."},
				{Question: "Will there be opportunities to purchase designs?", Answer: "Yes, there will be pop-up shops where you can purchase pieces from the featured designers."},
				{Question: "Is there a minimum age requirement?", Answer: "This event is for attendees 18 years and older."},
				{Question: "Will there be food and drinks available?", Answer: "Yes, there will be a cocktail reception with hors d'oeuvres, and a cash bar throughout the event."},
			},
			Organizer: "Events By Adnom, Specific 7 Ent, Plug Events",
		},
	}
}
