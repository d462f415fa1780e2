// Package firestore implementa los repositorios sobre Cloud Firestore con las
// mismas colecciones que usa la app web: pets, reunitedRequests, petTimeline.
package firestore

import (
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionPets     = "pets"
	collectionRequests = "reunitedRequests"
	collectionTimeline = "petTimeline"
)

var errNotFoundInTx = errors.New("document not found")

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Pets() *PetsRepo {
	return &PetsRepo{col: s.client.Collection(collectionPets), client: s.client}
}

func (s *Store) Reunions() *ReunionsRepo {
	return &ReunionsRepo{col: s.client.Collection(collectionRequests), client: s.client}
}

func (s *Store) Timeline() *TimelineRepo {
	return &TimelineRepo{col: s.client.Collection(collectionTimeline)}
}

func (s *Store) Close() error {
	return s.client.Close()
}
