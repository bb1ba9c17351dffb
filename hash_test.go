package ecpay

import "testing"

func TestHashers(t *testing.T) {
	tests := []struct {
		name   string
		hasher Hasher
		input  string
		want   string
	}{
		{"sha256 empty", SHA256Hasher(), "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha256 abc", SHA256Hasher(), "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"md5 empty", MD5Hasher(), "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"md5 abc", MD5Hasher(), "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha512 empty", SHA512Hasher(), "", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.hasher.Hash([]byte(tt.input))
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Hash(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasherFor(t *testing.T) {
	for _, algo := range []HashAlgo{HashSHA256, HashMD5, HashSHA512} {
		if _, ok := HasherFor(algo); !ok {
			t.Errorf("HasherFor(%q) not found", algo)
		}
	}

	if _, ok := HasherFor("argon2"); ok {
		t.Error("HasherFor(argon2) should not be found")
	}
}
