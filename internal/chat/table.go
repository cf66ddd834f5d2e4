package chat

// Table is the canned reply table: category -> subtopic -> text. Not every
// subtopic is reachable from a rule; the table is the source of truth for
// wording, the rules decide which entry a message gets.
var Table = map[string]map[string]string{
	"rent": {
		"general":  "To rent equipment, browse our catalog on the Search page, select the item you need, choose rental dates, and contact the seller. Need help with anything specific?",
		"process":  "Our rental process is simple: 1) Find equipment 2) Select dates 3) Contact Owner 4) Pick up or request delivery 5) Return on time to avoid extra fees.",
		"duration": "We offer flexible rental periods from daily to monthly. Longer rentals qualify for progressive discounts.",
		"payment":  "We accept credit cards, PayPal, and bank transfers. A security deposit is required for all rentals.",
	},
	"equipment": {
		"types":        "We rent Farming equipment (Tractors, bulldozers), gardening tools (lawn mowers, tillers), power tools",
		"availability": "Equipment availability varies by location and season. Check our search page for real-time inventory.",
		"condition":    "All our equipment is regularly serviced and maintained to ensure reliability and safety.",
		"popular":      "Currently, our most requested items are compact excavators, pressure washers, and portable generators.",
	},
	"listing": {
		"create":       "To list your equipment: 1) Sign in 2) Click 'Create Listing' in the Profile Page 3) Fill details 4) Upload photos 5) Set rental terms and pricing.",
		"requirements": "To list equipment, you must verify your identity, provide equipment documentation, and set up a Deposit and Price.",
		"fees":         "We do not charge any commission on successful rentals. No upfront fees to list your equipment.",
		"insurance":    "We provide optional insurance coverage for both owners and renters. Details can be found on our Insurance page.",
	},
	"account": {
		"signup":  "To create an account, click 'Sign Up' at the top right, fill the form or Continue with Google, and you're ready to go!",
		"login":   "Having trouble logging in? Click 'Forgot Password' or contact support for immediate assistance.",
		"profile": "Manage your profile by clicking your username after logging in. You can update Profile picture, username, and password.",
	},
	"pricing": {
		"structure": "Pricing depends on equipment type, rental duration, and location. Discounts apply for longer rentals.",
		"deposit":   "A security deposit is required for all rentals, typically 20-50% of the equipment value.",
		"discounts": "Owner can offer discounts for first-time users, weekly rentals, and monthly rentals.",
	},
	"delivery": {
		"options": "We offer pickup at our locations or delivery service within 50 miles radius for an additional fee.",
		"fees":    "Delivery Fee Depends on the owner",
		"timing":  "Depends on the owner.",
	},
	"return": {
		"process": "Return equipment to the same location you picked it up from, or schedule a pickup if you chose delivery.",
		"late":    "Late returns incur a fee of 150% of the daily rate for each day overdue.",
		"damage":  "Equipment returned damaged will be assessed by Owner. Repair costs may be deducted from your deposit.",
	},
	"support": {
		"contact":   "Reach our support team via the Contact page, email at support@farmtech.com, or call (555) 123-4567.",
		"hours":     "Our customer support is available Monday-Friday 8am-8pm and Saturday 9am-5pm.",
		"emergency": "For after-hours emergencies with rented equipment, call our 24/7 hotline: (555) 987-6543.",
	},
	"location": {
		"stores":     "We have rental centers in all over India.",
		"hours":      "Our rental centers are open Monday-Saturday 7am-7pm and Sunday 9am-4pm.",
		"directions": "Find detailed directions to each location on our Locations page or contact support for assistance.",
	},
}

var Greetings = []string{
	"Hi there! 👋 How can I help you with equipment rental today?",
	"Hello! Welcome to our equipment rental service. What can I assist you with?",
	"Welcome! I'm here to help with your equipment rental needs. How can I assist you?",
}

const Fallback = "I'm not sure I understood that. You can ask about renting equipment, listing your own equipment, pricing, delivery options, or contact support."
