package game

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// SessionID tags a session in logs and turn events. It is the 12-byte
// mgo ObjectId layout: timestamp, machine, pid, counter.
type SessionID string

func (id SessionID) String() string {
	return fmt.Sprintf("%x", string(id))
}

// Time returns the creation time encoded in the id.
func (id SessionID) Time() time.Time {
	if len(id) != 12 {
		return time.Time{}
	}
	secs := int64(binary.BigEndian.Uint32([]byte(string(id)[0:4])))
	return time.Unix(secs, 0)
}

var (
	sessionIDCounter uint32
	machineID        = machineHash()
)

func machineHash() [3]byte {
	var sum [3]byte
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	h := md5.Sum([]byte(hostname))
	copy(sum[:], h[:3])
	return sum
}

func newSessionID() SessionID {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b, uint32(time.Now().Unix()))
	copy(b[4:7], machineID[:])
	pid := os.Getpid()
	b[7] = byte(pid >> 8)
	b[8] = byte(pid)
	i := atomic.AddUint32(&sessionIDCounter, 1)
	b[9] = byte(i >> 16)
	b[10] = byte(i >> 8)
	b[11] = byte(i)
	return SessionID(b)
}
