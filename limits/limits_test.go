package limits

import (
	"errors"
	"testing"
)

// TestValidateMessageSize tests the generic size validation function
func TestValidateMessageSize(t *testing.T) {
	tests := []struct {
		name    string
		message []byte
		maxSize int
		wantErr error
	}{
		{"empty message", []byte{}, 10, ErrMessageEmpty},
		{"nil message", nil, 10, ErrMessageEmpty},
		{"exact limit", make([]byte, 10), 10, nil},
		{"one over limit", make([]byte, 11), 10, ErrMessageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageSize(tt.message, tt.maxSize)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMessageSize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidatePort checks the open interval (0, 65536)
func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{-1, true},
		{0, true},
		{1, false},
		{9000, false},
		{65535, false},
		{65536, true},
	}

	for _, tt := range tests {
		err := ValidatePort(tt.port)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidatePort(%d) error = %v, want ErrOutOfRange", tt.port, err)
		}
	}
}

func TestValidateMaxStreams(t *testing.T) {
	for _, n := range []int{0, 1, 4, MaxStreams} {
		if err := ValidateMaxStreams(n); err != nil {
			t.Errorf("ValidateMaxStreams(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, MaxStreams + 1} {
		if err := ValidateMaxStreams(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidateMaxStreams(%d) = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestValidateStreamID(t *testing.T) {
	if err := ValidateStreamID(3, 4); err != nil {
		t.Errorf("stream 3 of 4 rejected: %v", err)
	}
	if err := ValidateStreamID(4, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("stream 4 of 4 accepted: %v", err)
	}
	if err := ValidateStreamID(0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("stream 0 of 0 accepted: %v", err)
	}
}

// TestValidateFramedBuffer verifies the prefix-plus-payload minimum
func TestValidateFramedBuffer(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		wantErr error
	}{
		{"nil", nil, ErrFrameTooShort},
		{"prefix only", []byte{0x00, 0x01}, ErrFrameTooShort},
		{"one payload byte", []byte{0x00, 0x01, 'x'}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFramedBuffer(tt.buf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFramedBuffer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBufferSize(t *testing.T) {
	if err := ValidateBufferSize(DefaultMessageBuffer); err != nil {
		t.Errorf("default buffer rejected: %v", err)
	}
	if err := ValidateBufferSize(StreamIDSize); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("prefix-sized buffer accepted: %v", err)
	}
	if err := ValidateBufferSize(MaxMessageBuffer + 1); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("oversized buffer accepted: %v", err)
	}
}

// TestConstantConsistency verifies internal consistency of the size constants
func TestConstantConsistency(t *testing.T) {
	if DefaultMessageBuffer > MaxMessageBuffer {
		t.Errorf("DefaultMessageBuffer (%d) should be <= MaxMessageBuffer (%d)",
			DefaultMessageBuffer, MaxMessageBuffer)
	}
	if MaxPort != 65535 || MinPort != 1 {
		t.Errorf("port range = [%d, %d], want [1, 65535]", MinPort, MaxPort)
	}
	if ListenBacklog != 100 {
		t.Errorf("ListenBacklog = %d, want 100", ListenBacklog)
	}
}
