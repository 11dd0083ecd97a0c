// Package google provides the Google Cloud backends for listings.
//
// Properties, their contact submissions and site values live in Firestore,
// reached through the REST client in google.golang.org/api/firestore/v1.
// Uploaded assets go to a Cloud Storage bucket through storage/v1.
//
// # Layout
//
//	properties/{id}                       document JSON, version, updatedAt
//	properties/{id}/submissions/{sid}     submission JSON, createdAt
//	values/{key}                          raw bytes
//
// # Credentials
//
// A service account key file is used when configured, application default
// credentials otherwise:
//
//	opts, err := google.ClientOptions(ctx, cloud, firestore.DatastoreScope)
//	store, err := google.NewStore(ctx, cloud, opts...)
//
// Every call passes through a shared RateLimiter, and API failures are
// classified into domain.StoreError kinds.
package google
