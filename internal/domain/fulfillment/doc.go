// Package fulfillment contains the fulfillment bounded context: grouping
// unbatched orders into pickable batches (route suggestions) and the
// lifecycle of the routes built from them.
package fulfillment
