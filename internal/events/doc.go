// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package events carries tracked interactions and generated recommendations
from the HTTP layer to the warehouse over Watermill.

Transports (events.mode):

	memory     in-process GoChannel pub/sub
	nats       external NATS JetStream at events.url
	embedded   in-process NATS server with JetStream in events.store_dir
	disabled   no bus; Direct writes to the warehouse synchronously

Topics:

	interactions.tracked        payload: warehouse.Interaction
	recommendations.generated   payload: RecommendationGenerated

For JetStream both topics live in one stream (StreamName) that is created
or updated at startup. Each topic gets its own durable consumer.

The Router consumes both topics and persists them through a Recorder. It
runs Recoverer and Retry middleware; handler errors are retried with
exponential backoff before the message is nacked.

Both Bus and Direct implement Emitter, which is what the API depends on.
*/
package events
