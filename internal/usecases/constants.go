package usecases

// MaxProofsPerPayment caps the transfer receipts attached to one
// pending payment.
const MaxProofsPerPayment = 5

// TrackingChannelPrefix prefixes the pub/sub channel carrying tracking
// updates; the order ID completes the channel name.
const TrackingChannelPrefix = "tracking:"

// Pagination defaults
const DefaultPageLimit = 20
const MaxPageLimit = 100
