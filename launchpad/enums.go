package launchpad

import "fmt"

// Buffer identifies one of the two frame buffers of the device
type Buffer uint8

const (
	Buffer0 Buffer = iota
	Buffer1
)

// Other returns the peer buffer
func (b Buffer) Other() Buffer {
	if b == Buffer0 {
		return Buffer1
	}
	return Buffer0
}

func (b Buffer) Valid() bool {
	return b == Buffer0 || b == Buffer1
}

func (b Buffer) String() string {
	switch b {
	case Buffer0:
		return "BUFFER_0"
	case Buffer1:
		return "BUFFER_1"
	}
	return fmt.Sprintf("Buffer(%d)", uint8(b))
}

// ParseBuffer is the inverse of Buffer.String
func ParseBuffer(s string) (Buffer, error) {
	switch s {
	case "BUFFER_0":
		return Buffer0, nil
	case "BUFFER_1":
		return Buffer1, nil
	}
	return 0, &ArgumentError{Arg: "buffer", Value: s, Reason: "unknown buffer"}
}

// BackBufferOperation tells what a light update does to the buffer that is not written
type BackBufferOperation uint8

const (
	// None leaves the other buffer untouched
	None BackBufferOperation = iota
	// Copy writes the same color into the other buffer
	Copy
	// Clear switches the light off in the other buffer
	Clear
)

func (o BackBufferOperation) Valid() bool {
	return o <= Clear
}

func (o BackBufferOperation) String() string {
	switch o {
	case None:
		return "NONE"
	case Copy:
		return "COPY"
	case Clear:
		return "CLEAR"
	}
	return fmt.Sprintf("BackBufferOperation(%d)", uint8(o))
}

// ParseBackBufferOperation is the inverse of BackBufferOperation.String
func ParseBackBufferOperation(s string) (BackBufferOperation, error) {
	switch s {
	case "NONE":
		return None, nil
	case "COPY":
		return Copy, nil
	case "CLEAR":
		return Clear, nil
	}
	return 0, &ArgumentError{Arg: "operation", Value: s, Reason: "unknown back buffer operation"}
}

// LightIntensity is the coarse intensity used to test all lights at once
type LightIntensity uint8

const (
	Low LightIntensity = iota
	Medium
	High
)

func (i LightIntensity) Valid() bool {
	return i <= High
}

func (i LightIntensity) String() string {
	switch i {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	}
	return fmt.Sprintf("LightIntensity(%d)", uint8(i))
}
