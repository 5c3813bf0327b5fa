package rtc

import (
	"log"

	"github.com/pion/webrtc/v3"
)

var (
	mediaEngine *webrtc.MediaEngine
	api         *webrtc.API
)

// Initialize registers the codecs the browser peers negotiate with and
// builds the shared API instance. Must run once before NewPeer.
func Initialize() error {
	mediaEngine = &webrtc.MediaEngine{}

	if err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:     webrtc.MimeTypeH264,
			ClockRate:    90000,
			Channels:     0,
			SDPFmtpLine:  "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42001f",
			RTCPFeedback: nil,
		},
		PayloadType: 96,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		return err
	}

	if err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeOpus,
			ClockRate:   48000,
			Channels:    2,
			SDPFmtpLine: "",
		},
		PayloadType: 111,
	}, webrtc.RTPCodecTypeAudio); err != nil {
		return err
	}

	api = webrtc.NewAPI(webrtc.WithMediaEngine(mediaEngine))
	log.Println("WebRTC codecs initialized")
	return nil
}

func getAPI() *webrtc.API {
	return api
}
