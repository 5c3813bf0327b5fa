// Package rtc adapts a pion peer connection to the negotiation state
// machine: peer-connection setup, local tracks and the gesture data
// channel.
package rtc

import (
	"fmt"
	"log"

	"github.com/pion/webrtc/v3"

	"GestureLink/internal/transport"
)

// Peer owns one peer connection and its local media tracks. Creating a
// Peer is the "local media acquired" event for the headless client.
type Peer struct {
	pc         *webrtc.PeerConnection
	videoTrack *webrtc.TrackLocalStaticSample
	audioTrack *webrtc.TrackLocalStaticSample
}

func NewPeer(stunServer string) (*Peer, error) {
	config := webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: []string{stunServer}},
		},
	}
	pc, err := getAPI().NewPeerConnection(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create peer connection: %w", err)
	}

	videoTrack, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeH264},
		"video",
		"gesturelink",
	)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("failed to create video track: %w", err)
	}
	if _, err := pc.AddTrack(videoTrack); err != nil {
		pc.Close()
		return nil, fmt.Errorf("failed to add video track: %w", err)
	}

	audioTrack, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{
			MimeType:  webrtc.MimeTypeOpus,
			ClockRate: 48000,
			Channels:  2,
		},
		"audio",
		"gesturelink",
	)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("failed to create audio track: %w", err)
	}
	if _, err := pc.AddTrack(audioTrack); err != nil {
		pc.Close()
		return nil, fmt.Errorf("failed to add audio track: %w", err)
	}

	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Printf("Peer connection state changed: %s", state.String())
	})

	return &Peer{pc: pc, videoTrack: videoTrack, audioTrack: audioTrack}, nil
}

// OnICECandidate forwards locally gathered candidates.
func (p *Peer) OnICECandidate(fn func(webrtc.ICECandidateInit)) {
	p.pc.OnICECandidate(func(candidate *webrtc.ICECandidate) {
		if candidate == nil {
			return
		}
		fn(candidate.ToJSON())
	})
}

// OnGestureChannel fires when the remote peer opens the gesture data
// channel (answerer path). Channels with other labels are ignored.
func (p *Peer) OnGestureChannel(fn func(*webrtc.DataChannel)) {
	p.pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != transport.ChannelLabel {
			log.Printf("Ignoring data channel %q", dc.Label())
			return
		}
		fn(dc)
	})
}

// CreateGestureChannel opens the reliable ordered gesture channel
// (caller path). Must happen before the offer is created so the m-line
// is negotiated.
func (p *Peer) CreateGestureChannel() (*webrtc.DataChannel, error) {
	dc, err := p.pc.CreateDataChannel(transport.ChannelLabel, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create data channel: %w", err)
	}
	return dc, nil
}

// The methods below satisfy session.Link.

func (p *Peer) CreateOffer() (webrtc.SessionDescription, error) {
	return p.pc.CreateOffer(nil)
}

func (p *Peer) CreateAnswer() (webrtc.SessionDescription, error) {
	return p.pc.CreateAnswer(nil)
}

func (p *Peer) SetLocalDescription(sd webrtc.SessionDescription) error {
	return p.pc.SetLocalDescription(sd)
}

func (p *Peer) SetRemoteDescription(sd webrtc.SessionDescription) error {
	return p.pc.SetRemoteDescription(sd)
}

func (p *Peer) AddICECandidate(c webrtc.ICECandidateInit) error {
	return p.pc.AddICECandidate(c)
}

func (p *Peer) Close() error {
	return p.pc.Close()
}
