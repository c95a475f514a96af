package events

const (
	StreamName   = "HAVEN_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectProfileCreated(profileID string) string { return "haven.profile." + profileID + ".created" }
func SubjectProfileUpdated(profileID string) string { return "haven.profile." + profileID + ".updated" }
func SubjectProfileDeleted(profileID string) string { return "haven.profile." + profileID + ".deleted" }

func SubjectListingCreated(listingID string) string { return "haven.listing." + listingID + ".created" }
func SubjectListingUpdated(listingID string) string { return "haven.listing." + listingID + ".updated" }
func SubjectListingDeleted(listingID string) string { return "haven.listing." + listingID + ".deleted" }

func SubjectMatchSuggested(profileID string) string { return "haven.match." + profileID + ".suggested" }
