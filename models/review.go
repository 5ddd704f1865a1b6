package models

// NoCommentsMessage is reported when a hike page has no link to its reviews
const NoCommentsMessage = "There are no comments."

// Reviews holds the outcome of one pipeline run for a hike
type Reviews struct {
	HikeURL    string
	ListingURL string // Absolute URL of the "all reviews" page, empty when HasListing is false
	HasListing bool
	Comments   string // Review fragments joined by single spaces, in document order
}

// Text returns the string handed to the summarizer
func (r Reviews) Text() string {
	if !r.HasListing {
		return NoCommentsMessage
	}
	return r.Comments
}
