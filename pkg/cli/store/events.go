/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"time"
)

// EventType is the kind of change a store event reports
type EventType string

const (
	// EventLoad is published after the document was loaded
	EventLoad EventType = "LOAD"
	// EventSave is published after a full list was saved
	EventSave EventType = "SAVE"
	// EventPush is published after a note was appended and saved
	EventPush EventType = "PUSH"
	// EventRemove is published after a note was removed and the list saved
	EventRemove EventType = "REMOVE"
	// EventClear is published after the store was emptied
	EventClear EventType = "CLEAR"
	// EventReload is published after a change made by another process was
	// picked up by Watch
	EventReload EventType = "RELOAD"
)

// Event reports a change of the in-memory list. Ref is set for push and
// remove. Count is the number of notes after the change.
type Event struct {
	Type      EventType
	Ref       string
	Count     int
	Timestamp time.Time
}

// subscriberBuffer is the number of events held for a subscriber that is
// not receiving. Further events are dropped for that subscriber.
const subscriberBuffer = 32

// Subscribe returns a channel receiving every event published after the
// call, and a function that unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var done bool
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		if done {
			return
		}
		done = true
		delete(s.subs, id)
		close(ch)
	}

	return ch, cancel
}

func (s *Store) publish(t EventType, ref string, count int) {
	e := Event{
		Type:      t,
		Ref:       ref,
		Count:     count,
		Timestamp: s.clock.Now(),
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
